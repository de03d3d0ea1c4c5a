package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/driver"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

func (app *cli) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <program>",
		Short: "Decode a program and validate its structure without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := driver.LoadProgram(args[0])
			if err != nil {
				return &hostError{err: err}
			}
			if err := interpreter.Check(root); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "ok: %s\n", args[0])
			return nil
		},
	}
}
