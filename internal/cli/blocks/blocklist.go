package blocks

import (
	"fmt"
	"time"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/utils"
)

type BlockListCmd struct {
	Date string `help:"Calendar day to list (YYYY-MM-DD). Defaults to today."`
}

func (c *BlockListCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = utils.FormatDate(time.Now())
	} else if _, err := utils.ParseDate(date, time.Local); err != nil {
		return fmt.Errorf("invalid date (expected YYYY-MM-DD): %w", err)
	}

	blocks, err := ctx.Store.GetTimeBlocksByDate(ctx.OwnerID, date)
	if err != nil {
		return fmt.Errorf("failed to get time blocks: %w", err)
	}
	if len(blocks) == 0 {
		fmt.Printf("No time blocks on %s\n", date)
		return nil
	}

	fmt.Printf("Time blocks on %s:\n", date)
	for _, block := range blocks {
		marker := " "
		if block.IsCompleted {
			marker = "x"
		}
		linked := ""
		if block.TaskID != nil {
			linked = fmt.Sprintf(" -> task %s", *block.TaskID)
		}
		fmt.Printf("  [%s] %s - %s %s%s [%s]\n", marker,
			block.StartTime.Format("15:04"), block.EndTime.Format("15:04"),
			block.Type, linked, block.ID)
	}
	return nil
}

type BlockRollupCmd struct {
	Task string `arg:"" help:"Task ID whose duration to recompute from its blocks."`
}

func (c *BlockRollupCmd) Run(ctx *cli.Context) error {
	cli.ReportSync("rollup", ctx.Engine.UpdateTaskDurationFromTimeBlocks(c.Task))
	return nil
}
