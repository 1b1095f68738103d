package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"phenio-toolkit/internal/store"
	"phenio-toolkit/internal/table"
)

func setsCmd(global *globalOptions) *cobra.Command {
	var (
		database string
		setID    string
	)

	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List stored mapping sets or print one as SSSOM TSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("db") {
				cfg.Database = database
			}

			if cfg.Database == "" {
				return errors.New("no database configured (use --db or PHENIO_DB)")
			}

			db, err := store.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if setID != "" {
				records, err := store.ListMappings(ctx, db, setID)
				if err != nil {
					return err
				}

				return table.WriteSSSOM(out, records, nil)
			}

			sets, err := store.ListSets(ctx, db)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SET ID\tMAPPINGS\tUPDATED\tLICENSE")

			for _, s := range sets {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.ID, s.MappingCount, s.UpdatedAt.Format("2006-01-02 15:04:05"), s.License)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "SQLite database to read")
	cmd.Flags().StringVar(&setID, "set", "", "Mapping set id to print")

	return cmd
}
