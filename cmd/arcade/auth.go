package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gesturelab/gesture-arcade/internal/storage"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
	Long: `Manage the credentials used to report play sessions to the game API.
The token and URL are stored in the settings database; without a token
no session report is sent.

Examples:
  arcade auth set-token eyJhbGciOi...
  arcade auth set-url https://api.example.com
  arcade auth show
  arcade auth clear`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store the API bearer token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.close()

		if a.store == nil {
			fatalf("Error: settings database unavailable; token not stored")
		}

		a.auth.SetToken(args[0])
		fmt.Println("Token stored.")
	},
}

var authSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Store the game API base URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.close()

		if a.store == nil {
			fatalf("Error: settings database unavailable; URL not stored")
		}

		a.auth.SetAPIURL(args[0])
		fmt.Println("API URL stored.")
	},
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured API endpoint and token status",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.close()

		url := a.auth.APIURL()
		if url == "" {
			url = "(not set)"
		}
		fmt.Printf("API URL: %s\n", url)

		// Never print the token itself
		if a.auth.Token() != "" {
			fmt.Println("Token:   set")
		} else {
			fmt.Println("Token:   (not set)")
		}
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token and URL",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.close()

		if a.store == nil {
			fatalf("Error: settings database unavailable")
		}

		if err := a.store.DeleteSetting(storage.KeyAuthToken); err != nil {
			fatalf("Error clearing token: %v", err)
		}
		if err := a.store.DeleteSetting(storage.KeyAPIURL); err != nil {
			fatalf("Error clearing URL: %v", err)
		}
		fmt.Println("Credentials cleared.")
	},
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authSetURLCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authClearCmd)
}
