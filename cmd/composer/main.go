// composer is an interactive terminal client for the message composer.
// It wires the core against an extraction backend (the real one or
// extractd) and drives it from stdin:
//
//	/attach <path> [path...]   upload files to the current thread
//	/rm <file-id>              remove an attachment
//	/ls                        show the attachment list
//	/preview                   render the draft as HTML
//	text                       compose; a trailing \ inserts a newline
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/quillchat-dev/quillchat/internal/apiclient"
	"github.com/quillchat-dev/quillchat/internal/composer"
	"github.com/quillchat-dev/quillchat/shared/config"
	"github.com/quillchat-dev/quillchat/shared/domain"
	"github.com/quillchat-dev/quillchat/shared/jwt"
	"github.com/quillchat-dev/quillchat/shared/logger"
)

// consoleNotifier prints user-visible notices to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) Info(msg string)  { fmt.Println("[info] " + msg) }
func (consoleNotifier) Warn(msg string)  { fmt.Println("[warn] " + msg) }
func (consoleNotifier) Error(msg string) { fmt.Println("[error] " + msg) }

func main() {
	var configFolder, threadId string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&threadId, "thread", "", "conversation thread id (generated if empty)")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if threadId == "" {
		threadId = uuid.NewString()
	}

	client := apiclient.New(cfg.Public.Api)
	if cfg.JwtKey() != "" {
		token, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL()).NewToken(threadId)
		if err != nil {
			slog.Error("cannot mint token", "error", err)
			os.Exit(1)
		}
		client.SetToken(token)
	}

	var c *composer.Composer
	hooks := composer.Hooks{
		Resync: func(ctx context.Context) error {
			files, err := client.ListFiles(ctx, threadId)
			if err != nil {
				return err
			}
			c.SetAttachments(files)
			return nil
		},
		Dispatch: func(text string) {
			fmt.Printf("you> %s\n", text)
		},
		Notifier: consoleNotifier{},
	}
	c = composer.New(client, cfg.Public, hooks)

	fmt.Printf("thread %s — type /help for commands\n", threadId)
	runLoop(c, threadId)
}

func runLoop(c *composer.Composer, threadId domain.ThreadId) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "/help":
			fmt.Println("/attach <path>... | /rm <file-id> | /ls | /preview | /quit")
		case line == "/quit":
			return
		case line == "/ls":
			printAttachments(c.Attachments())
		case line == "/preview":
			html, err := c.Text.Preview()
			if err != nil {
				fmt.Println("[error] " + err.Error())
				continue
			}
			fmt.Println(html)
		case strings.HasPrefix(line, "/rm "):
			c.Removal.Remove(ctx, threadId, strings.TrimSpace(strings.TrimPrefix(line, "/rm ")))
			printAttachments(c.Attachments())
		case strings.HasPrefix(line, "/attach "):
			selection := readSelection(strings.Fields(strings.TrimPrefix(line, "/attach ")))
			c.Uploads.Upload(ctx, selection, threadId)
			printAttachments(c.Attachments())
		case strings.HasSuffix(line, `\`):
			// trailing backslash is the terminal stand-in for shift+enter
			c.Text.SetDraft(c.Text.Draft() + strings.TrimSuffix(line, `\`))
			c.Text.HandleEnter(true)
		default:
			c.Text.SetDraft(c.Text.Draft() + line)
			c.Text.HandleEnter(false)
		}
	}
}

func readSelection(paths []string) []domain.PendingUpload {
	var selection []domain.PendingUpload
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("[error] cannot read %s: %v\n", path, err)
			continue
		}
		selection = append(selection, domain.PendingUpload{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}
	return selection
}

func printAttachments(list domain.Attachments) {
	if len(list) == 0 {
		fmt.Println("no attachments")
		return
	}
	for _, a := range list {
		detail := ""
		switch {
		case a.PageCount != nil:
			detail = fmt.Sprintf(", %d pages", *a.PageCount)
		case a.SheetCount != nil && a.RowCount != nil:
			detail = fmt.Sprintf(", %d sheets / %d rows", *a.SheetCount, *a.RowCount)
		}
		fmt.Printf("  %s  %s (%s%s)\n", a.Id, a.Name, a.Kind, detail)
	}
}
