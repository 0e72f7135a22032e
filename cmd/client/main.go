package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/atinyakov/taskboard/internal/client/api"
	"github.com/atinyakov/taskboard/internal/client/cache"
	"github.com/atinyakov/taskboard/internal/client/session"
	"github.com/atinyakov/taskboard/internal/models"
	"github.com/google/uuid"
)

var (
	version   string
	buildDate string
)

// refresh replaces the local cache with the server's task collection.
func refresh(ctx context.Context, client *api.Client, c *cache.Cache) error {
	tasks, err := client.Tasks(ctx)
	if err != nil {
		return err
	}
	c.Replace(tasks)
	return nil
}

// printTasks renders the cached board grouped by status column.
func printTasks(c *cache.Cache) {
	tasks := c.List()
	if len(tasks) == 0 {
		fmt.Println("Board is empty")
		return
	}
	for _, status := range []models.Status{
		models.StatusTodo, models.StatusProgress, models.StatusReview, models.StatusFinished,
	} {
		printed := false
		for _, t := range tasks {
			if t.Status != status {
				continue
			}
			if !printed {
				fmt.Printf("[%s]\n", status)
				printed = true
			}
			fmt.Printf("  %s  %-10s %s\n", t.ID, t.Priority, t.Title)
		}
	}
}

// addTask creates a task optimistically: a placeholder entry appears on
// the board immediately and is reconciled with the stored record, or
// rolled back if the server rejects it.
func addTask(ctx context.Context, client *api.Client, c *cache.Cache, title string) {
	draft := models.TaskDraft{Title: title}

	snap := c.Take()
	tempID := uuid.NewString()
	c.Add(models.Task{
		ID:       tempID,
		Title:    title,
		Status:   models.StatusTodo,
		Priority: models.PriorityLow,
	})

	created, err := client.CreateTask(ctx, draft)
	if err != nil {
		c.Restore(snap)
		fmt.Println("create failed:", err)
		return
	}
	c.Remove(tempID)
	c.Confirm(created.ID, *created)
	fmt.Println("Created", created.ID)
}

// patchTask applies a partial update optimistically with rollback.
func patchTask(ctx context.Context, client *api.Client, c *cache.Cache, id string, patch models.TaskPatch) {
	snap := c.Take()
	if !c.Patch(id, patch) {
		fmt.Println("Task not found")
		return
	}

	updated, err := client.UpdateTask(ctx, id, patch)
	if err != nil {
		c.Restore(snap)
		fmt.Println("update failed:", err)
		return
	}
	c.Confirm(id, *updated)
	fmt.Println("Updated", id)
}

// removeTask deletes a task optimistically with rollback.
func removeTask(ctx context.Context, client *api.Client, c *cache.Cache, id string) {
	snap := c.Take()
	if !c.Remove(id) {
		fmt.Println("Task not found")
		return
	}

	if _, err := client.DeleteTask(ctx, id); err != nil {
		c.Restore(snap)
		fmt.Println("delete failed:", err)
		return
	}
	fmt.Println("Deleted", id)
}

// repl runs the interactive shell loop, accepting commands to manage tasks.
func repl(client *api.Client, sess *session.Session, c *cache.Cache) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	if sess.Authenticated() {
		if err := refresh(ctx, client, c); err != nil {
			// Restored token no longer works; drop back to anonymous.
			_ = sess.Clear()
			fmt.Println("session expired, please login")
		}
	}

	for {
		fmt.Print("taskboard> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register <name> <email> <password>, login <email> <password>, logout, whoami, list, add <title>, move <id> <status>, rm <id>, exit")
		case "register":
			if len(args) < 4 {
				fmt.Println("Usage: register <name> <email> <password>")
				continue
			}
			if err := client.Register(ctx, args[1], args[2], args[3]); err != nil {
				fmt.Println("register failed:", err)
				continue
			}
			fmt.Println("Registered, now login")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			user, err := client.Login(ctx, args[1], args[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Println("Logged in as", user.Name)
			if err := refresh(ctx, client, c); err != nil {
				fmt.Println("load failed:", err)
			}
		case "logout":
			_ = sess.Clear()
			c.Replace(nil)
			fmt.Println("Logged out")
		case "whoami":
			user, err := client.Me(ctx)
			if err != nil {
				fmt.Println("not logged in:", err)
				continue
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
		case "list":
			if err := refresh(ctx, client, c); err != nil {
				fmt.Println("load failed:", err)
				continue
			}
			printTasks(c)
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <title>")
				continue
			}
			addTask(ctx, client, c, strings.Join(args[1:], " "))
		case "move":
			if len(args) < 3 {
				fmt.Println("Usage: move <id> <status>")
				continue
			}
			status := models.Status(args[2])
			patchTask(ctx, client, c, args[1], models.TaskPatch{Status: &status})
		case "rm":
			if len(args) < 2 {
				fmt.Println("Usage: rm <id>")
				continue
			}
			removeTask(ctx, client, c, args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL     string
		sessionFile string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", "session.json", "path to session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Taskboard Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	sess := session.New(sessionFile)
	if err := sess.Load(); err != nil {
		fmt.Println("failed to load session:", err)
		os.Exit(1)
	}

	client := api.New(http.DefaultClient, baseURL, sess)
	repl(client, sess, cache.New())
}
