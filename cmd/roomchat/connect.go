package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roomchat/roomchat/internal/client"
	"github.com/roomchat/roomchat/internal/log"
	"github.com/roomchat/roomchat/internal/render/term"
	"github.com/roomchat/roomchat/internal/transport/ws"
)

func newConnectCmd() *cobra.Command {
	var (
		serverURL string
		username  string
		password  string
		register  bool
		room      string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a chat service as a terminal client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			levelFlag, _ := cmd.Flags().GetString("log-level")
			if levelFlag == "" {
				levelFlag = "warn"
			}
			logger := log.New(levelFlag)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			token, identity, err := authenticate(ctx, serverURL, username, password, register)
			if err != nil {
				return err
			}

			wsURL := strings.Replace(serverURL, "http", "ws", 1) + "/ws"
			conn, err := ws.Dial(ctx, wsURL, token, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			renderer := term.NewRenderer(os.Stdout, !noColor)
			input := term.NewInput(os.Stdout)
			session := client.NewSession(identity, room, conn, renderer, input, logger)
			dispatcher := client.NewDispatcher(session)

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			go dispatcher.Run(ctx)

			go func() {
				defer cancel()
				if err := conn.ReadLoop(ctx, dispatcher); err != nil {
					logger.Error().Err(err).Msg("connection lost")
				}
			}()

			fmt.Printf("Connected to %s as %s. /join <room> switches rooms, @user sends privately, /quit exits.\n", serverURL, identity)

			inputLoop(ctx, cancel, dispatcher)

			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "chat service base URL")
	cmd.Flags().StringVar(&username, "user", "", "username (leave empty for a guest session)")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolVar(&register, "register", false, "register a new account instead of logging in")
	cmd.Flags().StringVar(&room, "room", "General", "room to join on connect")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI styling")
	return cmd
}

func inputLoop(ctx context.Context, cancel context.CancelFunc, d *client.Dispatcher) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			switch {
			case strings.HasPrefix(line, "/join "):
				d.JoinRoom(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/join ")))
			case strings.TrimSpace(line) == "/quit":
				cancel()
				return
			default:
				d.SendMessage(ctx, line)
			}
		}
	}
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Error    string `json:"error"`
}

// authenticate obtains a session token: login or register when a
// username is given, a guest session otherwise.
func authenticate(ctx context.Context, baseURL, username, password string, register bool) (token, identity string, err error) {
	path := "/api/guest"
	body := map[string]string{}
	switch {
	case username != "" && register:
		path = "/api/register"
		body = map[string]string{"username": username, "password": password}
	case username != "":
		path = "/api/login"
		body = map[string]string{"username": username, "password": password}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", "", fmt.Errorf("marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	var decoded authResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", "", fmt.Errorf("decode auth response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("authentication failed: %s", decoded.Error)
	}

	return decoded.Token, decoded.Username, nil
}
