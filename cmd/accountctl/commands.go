package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/session"
	"github.com/Anurag-Zel/User-Registration/internal/user"
)

func registerCmd() *cobra.Command {
	var email, password, firstName, lastName, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			acc, err := client.Register(cmd.Context(), session.RegisterInput{
				Email:    email,
				Password: password,
				Profile: account.Profile{
					FirstName: firstName,
					LastName:  lastName,
					Phone:     phone,
				},
			})
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s (%s %s)\n", acc.Email, acc.Profile.FirstName, acc.Profile.LastName)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number (optional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			acc, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", acc.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			acc, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(acc)
		},
	}
}

func updateCmd() *cobra.Command {
	var firstName, lastName, phone, bio, city, country string
	var skills []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; omitted flags are left unchanged",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			var patch user.ProfilePatch
			if cmd.Flags().Changed("first-name") {
				patch.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				patch.LastName = &lastName
			}
			if cmd.Flags().Changed("phone") {
				patch.Phone = &phone
			}
			if cmd.Flags().Changed("bio") {
				patch.Bio = &bio
			}
			if cmd.Flags().Changed("skills") {
				patch.Skills = &skills
			}
			// Sending any location flag replaces the whole location object
			if cmd.Flags().Changed("city") || cmd.Flags().Changed("country") {
				patch.Location = &account.Location{City: city, Country: country}
			}

			acc, err := client.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}

			fmt.Printf("Profile updated for %s\n", acc.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&bio, "bio", "", "bio text")
	cmd.Flags().StringVar(&city, "city", "", "location city")
	cmd.Flags().StringVar(&country, "country", "", "location country")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "skills (comma separated)")

	return cmd
}

func deleteCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account (requires the current password)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteAccount(cmd.Context(), password); err != nil {
				return err
			}

			fmt.Println("Account deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "current password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.Logout(); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}
