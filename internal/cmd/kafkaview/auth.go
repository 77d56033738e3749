package kafkaview

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				read, err := readLine(cmd)
				if err != nil {
					return err
				}
				password = read
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rt, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()
			if _, err := rt.client.Login(ctx, username, password); err != nil {
				return err
			}
			rt.printf("logged in to %s as %s\n", rt.client.Origin(), username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password; read from stdin when empty")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rt, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.client.Logout(ctx); err != nil {
				return err
			}
			rt.printf("logged out\n")
			return nil
		},
	}
}

func readLine(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
