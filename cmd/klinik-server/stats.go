package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/klinik/klinik/pkg/client"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard counters and recent activity from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			date, _ := cmd.Flags().GetString("date")
			limit, _ := cmd.Flags().GetInt("limit")
			return printDashboard(cmd.Context(), cmd.OutOrStdout(), client.New(addr), date, limit)
		},
	}
	cmd.Flags().String("addr", "http://localhost:8000", "Server base URL")
	cmd.Flags().String("date", "", "Day to report (YYYY-MM-DD), defaults to today")
	cmd.Flags().Int("limit", 5, "Number of recent activities to show")
	return cmd
}

func printDashboard(ctx context.Context, w io.Writer, c *client.Client, date string, limit int) error {
	stats, err := c.DashboardStats(ctx, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tanggal          %s\n", stats.Date)
	fmt.Fprintf(w, "Pasien hari ini  %d\n", stats.TodayPatients)
	fmt.Fprintf(w, "IGD aktif        %d\n", stats.ActiveIGD)
	fmt.Fprintf(w, "Poli aktif       %d\n", stats.ActivePoli)
	fmt.Fprintf(w, "Lab selesai      %d\n", stats.CompletedLab)

	if limit <= 0 {
		return nil
	}
	activities, err := c.Activities(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, a := range activities {
		fmt.Fprintf(w, "[%s] %-10s %s (%s)\n", a.Status, a.Type, a.Message, a.TimeAgo)
	}
	return nil
}
