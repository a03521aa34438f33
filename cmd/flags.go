package cmd

import (
	"fmt"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/hierarchy"
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"log/slog"
)

// commonFlags are accepted by every subcommand
type commonFlags struct {
	classesPath *string
	logLevel    *int
}

func withCommonFlags(c *cobra.Command) *commonFlags {
	return &commonFlags{
		classesPath: c.Flags().StringP("classes", "c", "", "YAML file declaring the class hierarchy"),
		logLevel:    c.Flags().IntP("log-level", "l", int(slog.LevelError), "log level"),
	}
}

// setup applies the log level and loads the hierarchy, which is empty
// when no classes file was given
func (f *commonFlags) setup() (*hierarchy.Static, error) {
	log.SetLevel(slog.Level(*f.logLevel))
	if *f.classesPath == "" {
		return hierarchy.New(), nil
	}
	h, err := hierarchy.LoadYAMLFile(*f.classesPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not load classes")
	}
	return h, nil
}

func parseType(text string) (types.Union, error) {
	u, err := types.Parse(text)
	if err != nil {
		return types.Union{}, describe(err)
	}
	return u, nil
}

// describe renders CheckErrors with their code
func describe(err error) error {
	var checkErr checkerr.CheckError
	if errors.As(err, &checkErr) {
		return fmt.Errorf("%s", checkerr.FormatWithCode(checkErr))
	}
	return err
}
