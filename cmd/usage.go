/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/peremd/internal/translator"
)

var usageAuthKey string

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show the account's translation quota",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := viper.GetString("auth-key")
		if key == "" {
			key = usageAuthKey
		}
		if key == "" {
			return fmt.Errorf("no auth key given (use --auth-key or PEREMD_AUTH_KEY)")
		}

		svc := translator.NewDeepLService(key)
		usage, err := svc.Usage(context.Background())
		if err != nil {
			return err
		}
		if !usage.Valid {
			fmt.Println("Account is not metered")
			return nil
		}
		fmt.Printf("Characters used:      %d\n", usage.Count)
		fmt.Printf("Character limit:      %d\n", usage.Limit)
		fmt.Printf("Characters remaining: %d\n", usage.Remaining())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().StringVarP(&usageAuthKey, "auth-key", "k", "", "DeepL auth key (or PEREMD_AUTH_KEY)")
}
