// Command hashcode prints a bcrypt hash of a verification code, for use
// as VERIFICATION_CODE so the plain code never sits in the environment.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcpao/court-directory/internal/utils"
)

func newRootCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hashcode [code]",
		Short: "Hash a verification code with bcrypt",
		Long:  `Prints a bcrypt hash of the code given as argument, or of the first line of stdin.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, args)
			if err != nil {
				return err
			}
			hash, err := utils.HashCode(code, cost)
			if err != nil {
				return fmt.Errorf("hash code: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func readCode(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no code given")
	}
	code := strings.TrimRight(line, "\r\n")
	if code == "" {
		return "", errors.New("no code given")
	}
	return code, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
