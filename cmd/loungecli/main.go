// Package main provides the user CLI for the lounge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/SEUB66/sofartist-lounge/internal/app/poller"
	"github.com/SEUB66/sofartist-lounge/internal/client"
)

var (
	app    = kingpin.New("loungecli", "Sofartist lounge user client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token  = app.Flag("token", "Session token (or LOUNGE_TOKEN env)").Envar("LOUNGE_TOKEN").String()

	// login command
	loginCmd      = app.Command("login", "Log in with a nickname")
	loginNickname = loginCmd.Arg("nickname", "Nickname").Required().String()
	loginPassword = loginCmd.Flag("password", "Password (optional)").String()

	// say command
	sayCmd  = app.Command("say", "Post a chat message")
	sayBody = sayCmd.Arg("message", "Message body").Required().String()

	// chat command (poll new messages)
	chatCmd   = app.Command("chat", "Show chat messages newer than an id")
	chatAfter = chatCmd.Flag("after", "Only messages with id greater than this").Default("0").Int64()
	chatLimit = chatCmd.Flag("limit", "Maximum messages to fetch").Int()

	// users command
	usersCmd = app.Command("users", "List online users")

	// share command
	shareCmd   = app.Command("share", "Share a media link")
	shareURL   = shareCmd.Arg("url", "Link URL").Required().String()
	shareTitle = shareCmd.Flag("title", "Title").String()
	shareKind  = shareCmd.Flag("kind", "music, image or video (default: inferred)").String()

	// media command
	mediaCmd  = app.Command("media", "List shared media")
	mediaKind = mediaCmd.Flag("kind", "Filter by kind").String()

	// upload command
	uploadCmd         = app.Command("upload", "Request a brokered upload URL")
	uploadFilename    = uploadCmd.Arg("filename", "Filename").Required().String()
	uploadContentType = uploadCmd.Flag("content-type", "Content type").Default("application/octet-stream").String()

	// jukebox commands
	jukeboxCmd      = app.Command("jukebox", "Shared jukebox control")
	jukeboxStateCmd = jukeboxCmd.Command("state", "Show the shared playback state")
	jukeboxTrackCmd = jukeboxCmd.Command("track", "Switch the shared track")
	jukeboxTrackID  = jukeboxTrackCmd.Arg("track-id", "Track index, or 'none' to stop").Required().String()
	jukeboxPlayCmd  = jukeboxCmd.Command("play", "Resume shared playback")
	jukeboxPauseCmd = jukeboxCmd.Command("pause", "Pause shared playback")
	jukeboxSeekCmd  = jukeboxCmd.Command("seek", "Move the shared playhead")
	jukeboxSeekPos  = jukeboxSeekCmd.Arg("seconds", "Position in seconds").Required().Float64()

	// watch command (run the poller)
	watchCmd      = app.Command("watch", "Follow the shared jukebox, reconciling a local player")
	watchTracks   = watchCmd.Flag("tracks", "Size of the local track list").Default("0").Int64()
	watchInterval = watchCmd.Flag("interval", "Poll interval").Default("2s").Duration()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	c := client.New(*server)
	c.SetToken(*token)

	ctx := context.Background()

	switch command {
	case loginCmd.FullCommand():
		login(ctx, c)
	case sayCmd.FullCommand():
		say(ctx, c)
	case chatCmd.FullCommand():
		showChat(ctx, c)
	case usersCmd.FullCommand():
		listUsers(ctx, c)
	case shareCmd.FullCommand():
		share(ctx, c)
	case mediaCmd.FullCommand():
		listMedia(ctx, c)
	case uploadCmd.FullCommand():
		upload(ctx, c)
	case jukeboxStateCmd.FullCommand():
		jukeboxState(ctx, c)
	case jukeboxTrackCmd.FullCommand():
		jukeboxTrack(ctx, c)
	case jukeboxPlayCmd.FullCommand():
		jukeboxPlaying(ctx, c, true)
	case jukeboxPauseCmd.FullCommand():
		jukeboxPlaying(ctx, c, false)
	case jukeboxSeekCmd.FullCommand():
		jukeboxSeek(ctx, c)
	case watchCmd.FullCommand():
		watch(ctx, c)
	}
}

func fatal(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func login(ctx context.Context, c *client.Client) {
	result, err := c.Login(ctx, *loginNickname, *loginPassword)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Logged in as %s\n", result.User.Nickname)
	fmt.Printf("Session token: %s\n", result.Token)
	fmt.Println("Export it as LOUNGE_TOKEN for later commands.")
}

func say(ctx context.Context, c *client.Client) {
	msg, err := c.PostMessage(ctx, *sayBody)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("[%d] %s: %s\n", msg.ID, msg.Nickname, msg.Body)
}

func showChat(ctx context.Context, c *client.Client) {
	msgs, err := c.MessagesAfter(ctx, *chatAfter, *chatLimit)
	if err != nil {
		fatal(err)
	}
	for _, m := range msgs {
		fmt.Printf("[%d] %s %s: %s\n", m.ID, m.CreatedAt.Local().Format("15:04:05"), m.Nickname, m.Body)
	}
	if len(msgs) == 0 {
		fmt.Println("No new messages.")
	}
}

func listUsers(ctx context.Context, c *client.Client) {
	users, err := c.OnlineUsers(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%d online:\n", len(users))
	for _, u := range users {
		fmt.Printf("  %s (seen %s)\n", u.Nickname, u.LastSeen.Local().Format("15:04:05"))
	}
}

func share(ctx context.Context, c *client.Client) {
	item, err := c.ShareMedia(ctx, *shareURL, *shareTitle, *shareKind)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Shared [%d] %s: %s\n", item.ID, item.Kind, item.URL)
}

func listMedia(ctx context.Context, c *client.Client) {
	items, err := c.ListMedia(ctx, *mediaKind)
	if err != nil {
		fatal(err)
	}
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("[%d] %-5s %s - shared by %s\n    %s\n", item.ID, item.Kind, title, item.Nickname, item.URL)
	}
}

func upload(ctx context.Context, c *client.Client) {
	u, err := c.PresignUpload(ctx, *uploadFilename, *uploadContentType)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("PUT your file to:\n  %s\n", u.UploadURL)
	fmt.Printf("It will be readable at:\n  %s\n", u.PublicURL)
	fmt.Printf("Upload URL expires at %s\n", u.ExpiresAt)
}

func jukeboxState(ctx context.Context, c *client.Client) {
	state, err := c.PlaybackState(ctx)
	if err != nil {
		fatal(err)
	}
	track := "none"
	if state.CurrentTrackID != nil {
		track = fmt.Sprintf("%d", *state.CurrentTrackID)
	}
	status := "paused"
	if state.IsPlaying {
		status = "playing"
	}
	fmt.Printf("Track: %s  Position: %.1fs  Status: %s  (updated %s)\n",
		track, state.PositionSeconds, status, state.UpdatedAt.Local().Format(time.RFC3339))
}

func jukeboxTrack(ctx context.Context, c *client.Client) {
	var trackID *int64
	if *jukeboxTrackID != "none" {
		var id int64
		if _, err := fmt.Sscanf(*jukeboxTrackID, "%d", &id); err != nil {
			fatal(fmt.Errorf("track-id must be an integer or 'none'"))
		}
		trackID = &id
	}
	if err := c.SetTrack(ctx, trackID); err != nil {
		fatal(err)
	}
	fmt.Println("Done.")
}

func jukeboxPlaying(ctx context.Context, c *client.Client, playing bool) {
	if err := c.SetPlaying(ctx, playing); err != nil {
		fatal(err)
	}
	fmt.Println("Done.")
}

func jukeboxSeek(ctx context.Context, c *client.Client) {
	if err := c.SetPosition(ctx, *jukeboxSeekPos); err != nil {
		fatal(err)
	}
	fmt.Println("Done.")
}

func watch(ctx context.Context, c *client.Client) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nStopping...")
		cancel()
	}()

	fmt.Printf("Watching the shared jukebox (every %s). Press Ctrl+C to exit.\n", *watchInterval)
	p := poller.New(c, &consolePlayer{current: -1}, *watchTracks, *watchInterval)
	p.Run(ctx)
}
