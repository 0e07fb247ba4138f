package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/core"
	"pkt.systems/tabdeck/internal/appconfig"
	"pkt.systems/tabdeck/internal/eventbus"
	"pkt.systems/tabdeck/internal/logx"
	"pkt.systems/tabdeck/internal/profiles"
	"pkt.systems/tabdeck/schema"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	var window string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an interactive tabdeck session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			windowID := schema.WindowID(window)
			logger := logx.WithWindow(ctx, windowID)

			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			factory := profiles.New(logger, cfg.Profiles)
			bus := eventbus.New(logger)
			svc, err := core.NewService(cfg.ServiceConfig(), core.ServiceDeps{
				ContentFactory: factory,
				EventSink:      bus,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			stopWatch, err := appconfig.Watch(cfgPath, logger, func(next appconfig.Config) {
				factory.Replace(next.Profiles)
			})
			if err != nil {
				logger.Warn("config watch unavailable", "err", err)
			} else {
				defer func() { _ = stopWatch() }()
			}

			events, cancel := bus.Subscribe(windowID)
			defer cancel()
			go logEvents(logger, events)

			list, err := svc.ListTabs(ctx, schema.ListTabsRequest{WindowID: windowID})
			if err != nil {
				return err
			}
			if len(list.Workspace.Tabs) == 0 {
				if _, err := svc.NewTab(ctx, schema.NewTabRequest{WindowID: windowID}); err != nil {
					return err
				}
			}

			lines := make(chan string)
			go func() {
				defer close(lines)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					lines <- scanner.Text()
				}
			}()

			out := cmd.OutOrStdout()
			for {
				select {
				case <-ctx.Done():
					return nil
				case line, ok := <-lines:
					if !ok {
						return nil
					}
					fields := strings.Fields(line)
					if len(fields) == 0 {
						continue
					}
					if fields[0] == "quit" || fields[0] == "exit" {
						return nil
					}
					if err := dispatch(cmd, svc, windowID, fields, out); err != nil {
						logger.Warn("command failed", "command", fields[0], "err", err)
					}
				}
			}
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&window, "window", "w", "main", "window id")
	return cmd
}

func logEvents(logger pslog.Logger, events <-chan eventbus.Event) {
	for event := range events {
		switch event.Type {
		case eventbus.EventTab:
			logger.Info("tab event",
				"type", event.Tab.Type,
				"tab", event.Tab.Tab.ID,
				"index", event.Tab.Tab.Index,
				"title", event.Tab.Tab.Title,
				"focused", event.Tab.FocusedTab)
		case eventbus.EventWorkspace:
			logger.Info("workspace event", "type", event.Workspace.Type)
		}
	}
}

func dispatch(cmd *cobra.Command, svc core.Service, windowID schema.WindowID, fields []string, out io.Writer) error {
	ctx := cmd.Context()
	switch fields[0] {
	case "new":
		req := schema.NewTabRequest{WindowID: windowID}
		if len(fields) > 1 {
			req.Profile = schema.ProfileID(fields[1])
		}
		_, err := svc.NewTab(ctx, req)
		return err
	case "close":
		force := len(fields) > 1 && fields[1] == "force"
		_, err := svc.CloseTab(ctx, schema.CloseTabRequest{WindowID: windowID, Force: force})
		return err
	case "dup":
		_, err := svc.DuplicateTab(ctx, schema.DuplicateTabRequest{WindowID: windowID})
		return err
	case "select":
		if len(fields) < 2 {
			return fmt.Errorf("usage: select <index>")
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		_, err = svc.SelectTab(ctx, schema.SelectTabRequest{WindowID: windowID, Index: index})
		return err
	case "next", "prev":
		_, err := svc.SelectAdjacent(ctx, schema.SelectAdjacentRequest{
			WindowID:  windowID,
			MoveRight: fields[0] == "next",
		})
		return err
	case "mru-next", "mru-prev":
		_, err := svc.SelectAdjacent(ctx, schema.SelectAdjacentRequest{
			WindowID:  windowID,
			MoveRight: fields[0] == "mru-next",
			Mode:      schema.SwitchMostRecentlyUsed,
		})
		return err
	case "commit":
		_, err := svc.CommitSelection(ctx, schema.CommitSelectionRequest{WindowID: windowID})
		return err
	case "move":
		if len(fields) < 3 {
			return fmt.Errorf("usage: move <from> <to>")
		}
		from, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		_, err = svc.MoveTab(ctx, schema.MoveTabRequest{WindowID: windowID, FromIndex: from, ToIndex: to})
		return err
	case "ls":
		resp, err := svc.ListTabs(ctx, schema.ListTabsRequest{WindowID: windowID})
		if err != nil {
			return err
		}
		printWorkspace(out, resp.Workspace)
		return nil
	case "split":
		req := schema.SplitPaneRequest{WindowID: windowID, Direction: schema.SplitAutomatic}
		rest := fields[1:]
		if len(rest) > 0 {
			switch rest[0] {
			case "horizontal", "h":
				req.Direction = schema.SplitHorizontal
				rest = rest[1:]
			case "vertical", "v":
				req.Direction = schema.SplitVertical
				rest = rest[1:]
			case "auto", "a":
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			req.Profile = schema.ProfileID(rest[0])
		}
		_, err := svc.SplitPane(ctx, req)
		return err
	case "splitdup":
		_, err := svc.SplitPane(ctx, schema.SplitPaneRequest{
			WindowID:  windowID,
			Direction: schema.SplitAutomatic,
			Duplicate: true,
		})
		return err
	case "closepane":
		_, err := svc.ClosePane(ctx, schema.ClosePaneRequest{WindowID: windowID})
		return err
	case "zoom":
		resp, err := svc.ToggleZoom(ctx, schema.ToggleZoomRequest{WindowID: windowID})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "zoomed: %v\n", resp.Zoomed)
		return nil
	case "focus":
		if len(fields) < 2 {
			return fmt.Errorf("usage: focus <left|right|up|down>")
		}
		resp, err := svc.MoveFocus(ctx, schema.MoveFocusRequest{
			WindowID:  windowID,
			Direction: schema.FocusDirection(fields[1]),
		})
		if err != nil {
			return err
		}
		if !resp.Moved {
			fmt.Fprintln(out, "no pane in that direction")
		}
		return nil
	case "resize":
		if len(fields) < 2 {
			return fmt.Errorf("usage: resize <left|right|up|down>")
		}
		resp, err := svc.ResizePane(ctx, schema.ResizePaneRequest{
			WindowID:  windowID,
			Direction: schema.FocusDirection(fields[1]),
		})
		if err != nil {
			return err
		}
		if !resp.Resized {
			fmt.Fprintln(out, "no separator in that direction")
		}
		return nil
	case "title":
		if len(fields) < 2 {
			return fmt.Errorf("usage: title <text>")
		}
		_, err := svc.SetPaneTitle(ctx, schema.SetPaneTitleRequest{
			WindowID: windowID,
			Title:    strings.Join(fields[1:], " "),
		})
		return err
	case "tree":
		resp, err := svc.GetPaneTree(ctx, schema.GetPaneTreeRequest{WindowID: windowID})
		if err != nil {
			return err
		}
		printTree(out, resp.Root, 0)
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printWorkspace(out io.Writer, workspace schema.WorkspaceSnapshot) {
	for _, tab := range workspace.Tabs {
		marker := " "
		if tab.Focused {
			marker = "*"
		}
		flags := ""
		if tab.ReadOnly {
			flags += " [ro]"
		}
		if tab.Zoomed {
			flags += " [zoom]"
		}
		fmt.Fprintf(out, "%s %d: %s (%d panes)%s\n", marker, tab.Index, tab.Title, tab.Panes, flags)
	}
	if len(workspace.MRUOrder) > 0 {
		ids := make([]string, 0, len(workspace.MRUOrder))
		for _, id := range workspace.MRUOrder {
			ids = append(ids, string(id))
		}
		fmt.Fprintf(out, "mru: %s\n", strings.Join(ids, " "))
	}
}

func printTree(out io.Writer, node schema.PaneSnapshot, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(node.Children) == 0 {
		marker := ""
		if node.Focused {
			marker = " *"
		}
		if node.Zoomed {
			marker += " [zoom]"
		}
		fmt.Fprintf(out, "%s- %s (%s)%s\n", indent, node.Title, node.Profile, marker)
		return
	}
	fmt.Fprintf(out, "%s%s %.2f\n", indent, node.Direction, node.Ratio)
	for _, child := range node.Children {
		printTree(out, child, depth+1)
	}
}
