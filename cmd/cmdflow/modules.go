package main

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/napalu/cmdflow"
	"github.com/napalu/cmdflow/types"
)

type color int

const (
	red color = iota
	green
	blue
)

func (c color) String() string {
	return [...]string{"red", "green", "blue"}[c]
}

func registerDemoTypes(r *cmdflow.TypeParserRegistry) {
	cmdflow.RegisterEnum(r, map[string]color{"Red": red, "Green": green, "Blue": blue})
}

func demoModules() ([]*cmdflow.Module, error) {
	math, err := mathModule()
	if err != nil {
		return nil, err
	}
	echo, err := echoModule()
	if err != nil {
		return nil, err
	}
	misc, err := miscModule()
	if err != nil {
		return nil, err
	}
	return []*cmdflow.Module{math, echo, misc}, nil
}

func mathModule() (*cmdflow.Module, error) {
	add, err := cmdflow.NewCommand(
		cmdflow.WithName("add"),
		cmdflow.WithAliases("add", "sum"),
		cmdflow.WithCommandDescription("adds integers"),
		cmdflow.WithParameter("values", reflect.TypeOf([]int{}), cmdflow.AsVariadic()),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (int, error) {
			values, _ := cmdflow.Arg[[]int](c, "values")
			total := 0
			for _, v := range values {
				total += v
			}
			return total, nil
		})))
	if err != nil {
		return nil, err
	}

	div, err := cmdflow.NewCommand(
		cmdflow.WithName("div"),
		cmdflow.WithCommandDescription("divides two numbers"),
		cmdflow.WithParameter("dividend", reflect.TypeOf(float64(0))),
		cmdflow.WithParameter("divisor", reflect.TypeOf(float64(0)),
			cmdflow.WithParameterPreconditions(cmdflow.ParameterPreconditionFunc("non-zero",
				func(ctx context.Context, c *cmdflow.CommandContext, p *cmdflow.Parameter, value any) error {
					if value.(float64) == 0 {
						return errors.New("divisor must not be zero")
					}
					return nil
				}))),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (float64, error) {
			a, _ := cmdflow.Arg[float64](c, "dividend")
			b, _ := cmdflow.Arg[float64](c, "divisor")
			return a / b, nil
		})))
	if err != nil {
		return nil, err
	}

	return cmdflow.NewModule(
		cmdflow.WithModuleName("math"),
		cmdflow.WithModuleAliases("math", "m"),
		cmdflow.WithModuleDescription("arithmetic"),
		cmdflow.WithCommands(add, div))
}

func echoModule() (*cmdflow.Module, error) {
	say, err := cmdflow.NewCommand(
		cmdflow.WithName("say"),
		cmdflow.WithParameter("text", reflect.TypeOf(""), cmdflow.AsRemainder()),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (string, error) {
			text, _ := cmdflow.Arg[string](c, "text")
			return text, nil
		})))
	if err != nil {
		return nil, err
	}

	upper, err := cmdflow.NewCommand(
		cmdflow.WithName("upper"),
		cmdflow.WithParameter("text", reflect.TypeOf(""), cmdflow.AsRemainder()),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (string, error) {
			text, _ := cmdflow.Arg[string](c, "text")
			return strings.ToUpper(text), nil
		})))
	if err != nil {
		return nil, err
	}

	return cmdflow.NewModule(
		cmdflow.WithModuleName("echo"),
		cmdflow.WithModuleAliases("echo"),
		cmdflow.WithCommands(say, upper))
}

func miscModule() (*cmdflow.Module, error) {
	newID, err := cmdflow.NewCommand(
		cmdflow.WithName("uuid"),
		cmdflow.WithCommandDescription("generates a random UUID"),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (uuid.UUID, error) {
			return uuid.New(), nil
		})))
	if err != nil {
		return nil, err
	}

	wait, err := cmdflow.NewCommand(
		cmdflow.WithName("wait"),
		cmdflow.WithCommandDescription("waits for a duration"),
		cmdflow.WithParameter("duration", reflect.TypeOf(time.Duration(0))),
		cmdflow.WithRunMode(types.RunModeAwaited),
		cmdflow.WithHandler(func(ctx context.Context, c *cmdflow.CommandContext) *cmdflow.Task[struct{}] {
			d, _ := cmdflow.Arg[time.Duration](c, "duration")
			return cmdflow.Go(func() (struct{}, error) {
				select {
				case <-time.After(d):
					return struct{}{}, nil
				case <-ctx.Done():
					return struct{}{}, ctx.Err()
				}
			})
		}))
	if err != nil {
		return nil, err
	}

	when, err := cmdflow.NewCommand(
		cmdflow.WithName("when"),
		cmdflow.WithCommandDescription("normalizes a date"),
		cmdflow.WithParameter("date", reflect.TypeOf(time.Time{}), cmdflow.AsRemainder()),
		cmdflow.WithHandler(cmdflow.ObjectHandler(func(ctx context.Context, c *cmdflow.CommandContext) (string, error) {
			t, _ := cmdflow.Arg[time.Time](c, "date")
			return t.Format(time.RFC3339), nil
		})))
	if err != nil {
		return nil, err
	}

	paint, err := cmdflow.NewCommand(
		cmdflow.WithName("paint"),
		cmdflow.WithParameter("color", reflect.TypeOf(red)),
		cmdflow.WithParameter("target", reflect.TypeOf((*string)(nil))),
		cmdflow.WithHandler(func(ctx context.Context, c *cmdflow.CommandContext) (cmdflow.Result, error) {
			col, _ := cmdflow.Arg[color](c, "color")
			target, _ := cmdflow.Arg[*string](c, "target")
			if target == nil {
				return cmdflow.UserDefinedResult{Ok: true, Message: fmt.Sprintf("painted everything %s", col)}, nil
			}
			return cmdflow.UserDefinedResult{Ok: true, Message: fmt.Sprintf("painted %s %s", *target, col)}, nil
		}))
	if err != nil {
		return nil, err
	}

	return cmdflow.NewModule(
		cmdflow.WithModuleName("misc"),
		cmdflow.WithCommands(newID, wait, when, paint))
}
