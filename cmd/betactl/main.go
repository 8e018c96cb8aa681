// betactl is a developer tool for managing the beta access record, the same
// operations the frontend used to expose on the browser console.
package main

import (
	"stlouis-middleware/access"
	"stlouis-middleware/beta"
	"stlouis-middleware/config"

	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func openGate() *access.Gate {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err.Error())
	}
	switch conf.Storage.Driver {
	case "postgres":
		return access.NewGate(access.NewPostgresStore(conf.Storage))
	case "sqlite":
		path := conf.Storage.SQLitePath
		if path == "" {
			path = "beta_state.db"
		}
		return access.NewGate(access.NewSQLiteStore(path))
	}
	log.Fatalf("storage driver %q has no persistent state to manage", conf.Storage.Driver)
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "betactl",
		Short: "Manage beta access for the St. Louis Demonstration JHS site",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "grant",
		Short: "Grant beta access for the next 24 hours",
		Run: func(cmd *cobra.Command, args []string) {
			openGate().GrantAccess()
			fmt.Println("beta access granted")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "revoke",
		Short: "Revoke beta access immediately",
		Run: func(cmd *cobra.Command, args []string) {
			openGate().RevokeAccess()
			fmt.Println("beta access revoked")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Check the current beta access status",
		Run: func(cmd *cobra.Command, args []string) {
			remaining, ok := openGate().Remaining()
			if !ok {
				fmt.Println("no active beta access")
				return
			}
			hours := int(remaining.Hours())
			minutes := int(remaining.Minutes()) % 60
			fmt.Printf("beta access active, time remaining: %vh %vm\n", hours, minutes)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "extend",
		Short: "Reset the access timer to 24 hours from now",
		Run: func(cmd *cobra.Command, args []string) {
			if openGate().ExtendAccess() {
				fmt.Println("beta access extended for 24 hours")
				return
			}
			fmt.Println("no active beta access to extend")
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "codes",
		Short: "List the valid beta tester codes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, code := range beta.Codes() {
				fmt.Println(code)
			}
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
