package blocks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/models"
	"github.com/focusflowhq/focusflow/internal/timeparse"
)

type BlockAddCmd struct {
	Task  string `help:"Task ID to link the block to."`
	When  string `short:"w" help:"Natural-language time range, e.g. 'from 2pm to 3pm'."`
	Start string `help:"Start timestamp (RFC3339)."`
	End   string `help:"End timestamp (RFC3339)."`
	Type  string `help:"Block type (work|break|meeting|personal|exercise|learning|buffer)." default:"work"`
	Notes string `short:"n" help:"Notes."`
}

func (c *BlockAddCmd) Run(ctx *cli.Context) error {
	now := time.Now()

	var start, end time.Time
	if c.When != "" {
		rng, ok := timeparse.ExtractTimeRange(c.When, now)
		if !ok {
			// Fall back to a single time plus the default block length.
			single, found := timeparse.ParseNaturalLanguageTime(c.When, now)
			if !found {
				return fmt.Errorf("could not extract a time from %q", c.When)
			}
			start, end = timeparse.ValidateTimeBlockTimestamps(single.Format(time.RFC3339), "", now)
		} else {
			start, end = rng.Start, rng.End
		}
	}
	if start.IsZero() {
		start, end = timeparse.ValidateTimeBlockTimestamps(c.Start, c.End, now)
	}

	// Whatever the source, never persist an inverted interval.
	start, end = timeparse.ValidateTimeBlockTimestamps(start.Format(time.RFC3339), end.Format(time.RFC3339), now)

	block := models.TimeBlock{
		ID:        uuid.NewString(),
		OwnerID:   ctx.OwnerID,
		StartTime: start,
		EndTime:   end,
		Type:      models.BlockType(c.Type),
		Notes:     c.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Task != "" {
		taskID := c.Task
		block.TaskID = &taskID
	}

	if err := ctx.Store.AddTimeBlock(block); err != nil {
		return fmt.Errorf("failed to add time block: %w", err)
	}
	fmt.Printf("Added time block %s - %s (ID: %s)\n",
		start.Format("2006-01-02 15:04"), end.Format("15:04"), block.ID)

	if block.TaskID != nil {
		cli.ReportSync("sync", ctx.Engine.SyncTimeBlockToTask(block))
	}
	return nil
}
