package blocks

import (
	"fmt"

	"github.com/focusflowhq/focusflow/internal/cli"
)

type BlockDeleteCmd struct {
	ID string `arg:"" help:"Time block ID to delete."`
}

func (c *BlockDeleteCmd) Run(ctx *cli.Context) error {
	block, err := ctx.Store.GetTimeBlock(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find time block with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteTimeBlock(c.ID); err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
	}
	fmt.Printf("Deleted time block %s\n", c.ID)

	// The row is gone; reconcile the linked task afterwards.
	if block.TaskID != nil {
		cli.ReportSync("sync", ctx.Engine.SyncTimeBlockDeletion(block.ID, *block.TaskID))
	}
	return nil
}
