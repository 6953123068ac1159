package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"suitcase-cli/internal/model"
	"suitcase-cli/internal/notify"

	"github.com/spf13/cobra"
)

// itemView is the list/show wire shape. The raw blob stays out of listings;
// imageBytes tells callers the stored size instead.
type itemView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageBytes  int     `json:"imageBytes"`
	Purchased   bool    `json:"purchased"`
}

func viewOf(it model.Item) itemView {
	return itemView{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		ImageBytes:  len(it.Image),
		Purchased:   it.Purchased,
	}
}

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	cmd.AddCommand(newItemsDelegateCmd(app))
	return cmd
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, errInvalidID(arg)
	}
	return id, nil
}

func newItemsAddCmd(app *App) *cobra.Command {
	var name, price, description, imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			image, err := os.ReadFile(imagePath)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := cmds.Add(context.Background(), name, price, description, image)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewOf(it)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&price, "price", "", "Item price")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the item photo")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items := cmds.List().Items()
			views := make([]itemView, 0, len(items))
			for _, it := range items {
				views = append(views, viewOf(it))
			}
			return writeOut(cmd, app, map[string]any{"data": views})
		},
	}
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item (including the image blob)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			idx := cmds.List().IndexOf(id)
			if idx < 0 {
				return writeErr(cmd, errNotFound(id))
			}
			it, err := cmds.List().At(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var name, price, description, imagePath string

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit an item (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			idx := cmds.List().IndexOf(id)
			if idx < 0 {
				return writeErr(cmd, errNotFound(id))
			}
			cur, err := cmds.List().At(idx)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Prefill with the current record, like the edit screen does.
			if !cmd.Flags().Changed("name") {
				name = cur.Name
			}
			if !cmd.Flags().Changed("price") {
				price = strconv.FormatFloat(cur.Price, 'f', -1, 64)
			}
			if !cmd.Flags().Changed("description") {
				description = cur.Description
			}
			image := cur.Image
			if cmd.Flags().Changed("image") {
				image, err = os.ReadFile(imagePath)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			it, err := cmds.Update(context.Background(), id, name, price, description, image)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewOf(it)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&price, "price", "", "Item price")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a replacement photo")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item (no-op when already gone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cmds.Delete(context.Background(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Toggle an item's purchased flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := cmds.TogglePurchased(context.Background(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewOf(it)})
		},
	}
	return cmd
}

func newItemsDelegateCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "delegate <item-id>",
		Short: "Compose the delegation message for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := loadCommands(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			idx := cmds.List().IndexOf(id)
			if idx < 0 {
				return writeErr(cmd, errNotFound(id))
			}
			it, err := cmds.List().At(idx)
			if err != nil {
				return writeErr(cmd, err)
			}

			n := notify.WriterNotifier{W: cmd.OutOrStdout()}
			if err := n.Send(context.Background(), to, notify.ItemMessage(it.Snapshot())); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination phone number")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
