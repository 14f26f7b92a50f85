// Package main provides the admin CLI for the lounge.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/SEUB66/sofartist-lounge/internal/client"
)

var (
	app        = kingpin.New("lounge-admincli", "Sofartist lounge admin client")
	server     = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	adminToken = app.Flag("token", "Admin token (or LOUNGE_ADMIN_TOKEN env)").Envar("LOUNGE_ADMIN_TOKEN").Required().String()

	// users command
	usersCmd = app.Command("users", "List all registered users")

	// remove-message command
	rmMessageCmd = app.Command("remove-message", "Delete a chat message")
	rmMessageID  = rmMessageCmd.Arg("id", "Message id").Required().Int64()

	// remove-media command
	rmMediaCmd = app.Command("remove-media", "Delete a shared media item")
	rmMediaID  = rmMediaCmd.Arg("id", "Media id").Required().Int64()

	// reset-playback command
	resetPlaybackCmd = app.Command("reset-playback", "Reset the shared jukebox to defaults")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	c := client.New(*server)
	c.SetAdminToken(*adminToken)

	ctx := context.Background()

	if command == usersCmd.FullCommand() {
		if err := listUsers(ctx, c); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch command {
	case rmMessageCmd.FullCommand():
		err = c.AdminDeleteMessage(ctx, *rmMessageID)
	case rmMediaCmd.FullCommand():
		err = c.AdminDeleteMedia(ctx, *rmMediaID)
	case resetPlaybackCmd.FullCommand():
		err = c.AdminResetPlayback(ctx)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func listUsers(ctx context.Context, c *client.Client) error {
	users, err := c.AdminListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		flags := ""
		if u.IsAdmin {
			flags += " [admin]"
		}
		if u.HasPassword {
			flags += " [password]"
		}
		lastSeen := u.LastSeenAt
		if lastSeen == "" {
			lastSeen = "never"
		}
		fmt.Printf("[%d] %s%s  joined=%s  seen=%s\n", u.ID, u.Nickname, flags, u.CreatedAt, lastSeen)
	}
	return nil
}
