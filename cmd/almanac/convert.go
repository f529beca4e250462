package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/almanac"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/timescale"
)

func newDeltaATCmd(a *app) *cobra.Command {
	var fraction float64

	cmd := &cobra.Command{
		Use:   "dat YYYY-MM-DD",
		Short: "TAI-UTC in seconds on a UTC date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var year, month, day int
			if _, err := fmt.Sscanf(args[0], "%d-%d-%d", &year, &month, &day); err != nil {
				return fmt.Errorf("parse date %q: %w", args[0], err)
			}

			dat, warn, err := leap.DeltaAT(year, month, day, fraction)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.7f\n", dat)
			printStatus(cmd, warn)
			return nil
		},
	}

	cmd.Flags().Float64Var(&fraction, "fraction", 0, "fraction of the day, 0-1")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		from, to  string
		precision int
		dtr       float64
		dta       float64
		deltaT    float64
	)

	cmd := &cobra.Command{
		Use:   "convert JD1 [JD2]",
		Short: "Convert a two-part Julian date between time scales",
		Long: `Converts a two-part Julian date along the shortest route between two time
scales. Routes through TDB need --dtr; routes through UT1 need --dut1, --dta
or --deltat.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args)
			if err != nil {
				return err
			}
			fromScale, err := timescale.ParseScale(from)
			if err != nil {
				return err
			}
			toScale, err := timescale.ParseScale(to)
			if err != nil {
				return err
			}

			var opts []timescale.ConvertOption
			flags := cmd.Flags()
			if flags.Changed("dtr") {
				opts = append(opts, timescale.WithDTR(dtr))
			}
			if flags.Changed("dut1") || a.config.DUT1 != 0 {
				opts = append(opts, timescale.WithDUT1(a.config.DUT1))
			}
			if flags.Changed("dta") {
				opts = append(opts, timescale.WithDTA(dta))
			}
			if flags.Changed("deltat") {
				opts = append(opts, timescale.WithDeltaT(deltaT))
			}

			route, err := timescale.Route(fromScale, toScale, opts...)
			if err != nil {
				return err
			}
			names := make([]string, len(route))
			for i, s := range route {
				names[i] = s.String()
			}

			out, warn, err := a.converter.Convert(fromScale, toScale, d, opts...)
			if err != nil {
				return err
			}
			cal, w, err := a.converter.ToCalendar(toScale, precision, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%.9f %.15f\n%s %s\n", strings.Join(names, " -> "), out.Part1, out.Part2, cal, toScale)
			printStatus(cmd, warn|w)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "UTC", "time scale of the input")
	cmd.Flags().StringVar(&to, "to", "TT", "time scale of the output")
	cmd.Flags().IntVar(&precision, "precision", 3, "decimal places of a second")
	cmd.Flags().Float64Var(&dtr, "dtr", 0, "TDB-TT in seconds")
	cmd.Flags().Float64Var(&dta, "dta", 0, "UT1-TAI in seconds")
	cmd.Flags().Float64Var(&deltaT, "deltat", 0, "TT-UT1 in seconds")
	return cmd
}

func newNowCmd(a *app) *cobra.Command {
	var (
		scales    []string
		precision int
	)

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current instant in every time scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job := almanac.Job{
				Precision: precision,
				DUT1:      a.config.DUT1,
				Converter: a.converter,
				Logger:    a.logger,
			}
			for _, name := range scales {
				s, err := timescale.ParseScale(name)
				if err != nil {
					return err
				}
				job.Scales = append(job.Scales, s)
			}

			report, err := job.Report(time.Now())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Scale", "Time", "JD1", "JD2"})
			for _, r := range report.Readings {
				t.AppendRow(table.Row{r.Scale, r.Time, fmt.Sprintf("%.1f", r.Date.Part1), fmt.Sprintf("%.12f", r.Date.Part2)})
			}
			t.AppendFooter(table.Row{"TAI64N", report.TAI64N, "", ""})
			t.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "sun: longitude %.3f° declination %+.3f°\n", report.Sun.Longitude, report.Sun.Declination)
			printStatus(cmd, report.Warning)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&scales, "scales", nil, "scales to show (default all)")
	cmd.Flags().IntVar(&precision, "precision", 3, "decimal places of a second")
	return cmd
}

func newLeapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leap",
		Short: "List the leap second table in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := leap.Get()

			inserted := make(map[int]bool)
			for _, e := range leap.Insertions(entries) {
				inserted[12*e.Year+e.Month] = true
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"From", "TAI-UTC", "Drift (s/day)", "Drift epoch (MJD)", "Leap second"})
			for _, e := range entries {
				row := table.Row{fmt.Sprintf("%04d-%02d", e.Year, e.Month), fmt.Sprintf("%.7f", e.DeltaAT), "", "", ""}
				if e.DriftRate != 0 {
					row[2] = fmt.Sprintf("%.7f", e.DriftRate)
					row[3] = fmt.Sprintf("%.1f", e.DriftEpoch)
				}
				if inserted[12*e.Year+e.Month] {
					row[4] = fmt.Sprintf("%s 23:59:60", almanac.LeapInstant(e).Format("2006-01-02"))
				}
				t.AppendRow(row)
			}
			t.Render()

			if len(entries) > 0 {
				newest := entries[len(entries)-1]
				if newest.Year > leap.ReleaseYear {
					fmt.Fprintf(cmd.ErrOrStderr(), "note: table extends past %d\n", leap.ReleaseYear)
				}
			}
			return nil
		},
	}
}
