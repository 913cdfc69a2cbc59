package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stafflens/goalboard/internal/editor"
	"github.com/stafflens/goalboard/internal/models"
)

type GetCmd struct {
	ServerFlags `embed:""`
}

func (c *GetCmd) Run(ctx context.Context, globals *Globals) error {
	goals, err := c.client().FetchGoals(ctx)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("no goals set")
		return nil
	}

	printGoals(goals)
	return nil
}

type SetCmd struct {
	ServerFlags `embed:""`
	Values      []string `arg:"" help:"goal values as name=value pairs (e.g. revenueYTD=1500000)"`
}

func (c *SetCmd) Run(ctx context.Context, globals *Globals) error {
	ed := editor.New(c.client(), models.GoalSet{})
	ed.Load(ctx)

	for _, pair := range c.Values {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid value %q, expected name=value", pair)
		}
		if err := ed.SetField(name, value); err != nil {
			return err
		}
	}

	if err := ed.Submit(ctx); err != nil {
		return fmt.Errorf("save failed: %s", ed.SaveError())
	}

	fmt.Println("goals saved")
	printGoals(ed.Draft())
	return nil
}

type OrgCmd struct {
	ServerFlags `embed:""`
}

func (c *OrgCmd) Run(ctx context.Context, globals *Globals) error {
	org, err := c.client().Organization(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", org.Name, org.Slug)
	fmt.Printf("id: %s\n", org.ID)
	return nil
}

func printGoals(goals models.GoalSet) {
	names := make([]string, 0, len(goals))
	for name := range goals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-12s %15.2f\n", name, goals[name])
	}
}
