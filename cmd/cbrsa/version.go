package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
)

const versionFormat = "cbrsa version %v-%v (%v %v)"

// Version string variables
var (
	builtBy string
	builtAt string
)

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version of the cbrsa binary",
		Long:  "print version of the cbrsa binary",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, getVersion())
		},
	}
}

func getVersion() string {
	return fmt.Sprintf(versionFormat, cbrsa.ModuleVersion(), cbrsa.BuildCommit(), builtBy, builtAt)
}
