package cli

import (
	"fmt"
)

type GenerateCmd struct {
	Force bool `help:"Rerun generation even if it already ran today."`
}

func (c *GenerateCmd) Run(ctx *Context) error {
	result, err := ctx.Scheduler.RunDaily(ctx.OwnerID, c.Force)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d task instance(s)\n", result.Generated)
	for _, ruleErr := range result.Errors {
		fmt.Printf("  rule %s failed: %s\n", ruleErr.RuleID, ruleErr.Err)
	}
	return nil
}

type CleanupCmd struct {
	OlderThan int `help:"Delete completed tasks older than this many days." default:"30"`
}

func (c *CleanupCmd) Run(ctx *Context) error {
	if c.OlderThan < 0 {
		return fmt.Errorf("--older-than must not be negative")
	}

	deleted, err := ctx.Scheduler.CleanupCompletedInstances(ctx.OwnerID, c.OlderThan)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d completed task(s)\n", deleted)
	return nil
}
