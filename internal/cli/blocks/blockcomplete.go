package blocks

import (
	"fmt"
	"time"

	"github.com/focusflowhq/focusflow/internal/cli"
)

type BlockCompleteCmd struct {
	ID string `arg:"" help:"Time block ID to mark complete."`
}

func (c *BlockCompleteCmd) Run(ctx *cli.Context) error {
	block, err := ctx.Store.GetTimeBlock(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find time block with ID %s: %w", c.ID, err)
	}

	if !block.IsCompleted {
		block.IsCompleted = true
		block.UpdatedAt = time.Now()
		if err := ctx.Store.UpdateTimeBlock(block); err != nil {
			return fmt.Errorf("failed to update time block: %w", err)
		}
	}
	fmt.Printf("Completed time block %s\n", block.ID)

	if block.TaskID != nil {
		cli.ReportSync("sync", ctx.Engine.SyncTimeBlockCompletion(block))
	}
	return nil
}
