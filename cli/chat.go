package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"abhyaasi/models"
	"abhyaasi/store"
)

func (cli *CommandLine) chat(args []string) error {
	chatCmd := flag.NewFlagSet("chat", flag.ExitOnError)
	message := chatCmd.String("message", "", "Message for the AI assistant")
	clear := chatCmd.Bool("clear", false, "Clear stored chat history")
	if err := chatCmd.Parse(args); err != nil {
		return err
	}

	if *clear {
		if err := cli.store.Delete(store.KeyChatHistory); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Chat history cleared.")
		return nil
	}
	if *message == "" {
		chatCmd.Usage()
		return errHelp
	}

	history := cli.loadChatHistory()
	reply, err := cli.api.Chat.Send(context.Background(), *message, history)
	if err != nil {
		fmt.Fprintf(cli.out, "Chat failed: %s\n", errText(err))
		return err
	}

	now := time.Now()
	history = append(history,
		models.ChatMessage{Role: "user", Content: *message, SentAt: now},
		models.ChatMessage{Role: "assistant", Content: reply, SentAt: now},
	)
	if blob, err := json.Marshal(history); err == nil {
		_ = cli.store.Set(store.KeyChatHistory, string(blob))
	}

	fmt.Fprintln(cli.out, reply)
	return nil
}

func (cli *CommandLine) loadChatHistory() []models.ChatMessage {
	blob, ok := cli.store.Get(store.KeyChatHistory)
	if !ok {
		return nil
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(blob), &history); err != nil {
		return nil
	}
	return history
}
