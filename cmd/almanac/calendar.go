package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/status"
	"github.com/subtlepseudonym/almanac/timescale"
)

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", arg, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseDate reads one or two float arguments as a two-part Julian date
func parseDate(args []string) (julian.Date, error) {
	var parts [2]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return julian.Date{}, fmt.Errorf("parse %q: %w", arg, err)
		}
		parts[i] = v
	}
	return julian.Date{Part1: parts[0], Part2: parts[1]}, nil
}

// printStatus reports warnings and the legacy status code on stderr
func printStatus(cmd *cobra.Command, warn status.Warning) {
	if warn != 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s (status %d)\n", warn, status.Code(warn, nil))
	}
}

func newCalToJDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cal2jd YEAR MONTH DAY",
		Short: "Julian date of 0h on a Gregorian calendar date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}

			d, err := julian.CalendarToJD(v[0], v[1], v[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f %.1f\n", d.Part1, d.Part2)
			return nil
		},
	}
}

func newJDToCalCmd(a *app) *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "jd2cal JD1 [JD2]",
		Short: "Gregorian calendar date of a two-part Julian date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("decimals") {
				year, month, day, fraction, err := julian.JDToCalendar(d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%04d-%02d-%02d %.9f\n", year, month, day, fraction)
				return nil
			}

			cal, warn, err := julian.CalendarWithDecimals(decimals, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%04d-%02d-%02d %d\n", cal.Year, cal.Month, cal.Day, cal.Fraction)
			printStatus(cmd, warn)
			return nil
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 0, "round the day fraction to this many decimal places (0-9)")
	return cmd
}

func newEpochCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "epoch JD1 [JD2]",
		Short: "Julian and Besselian epochs of a TT Julian date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "J%.9f\n", julian.JulianEpoch(d))
			fmt.Fprintf(out, "B%.9f\n", julian.BesselianEpoch(d))
			return nil
		},
	}
}

func newFromCalendarCmd(a *app) *cobra.Command {
	var scaleName string

	cmd := &cobra.Command{
		Use:   "jd YYYY-MM-DD [HH:MM:SS.sss]",
		Short: "Two-part Julian date of a calendar date and clock time",
		Long: `Converts a calendar date and time of day in the given scale to a two-part
Julian date. In UTC the final minute of a day ending in a leap second runs to
second 60.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := timescale.ParseScale(scaleName)
			if err != nil {
				return err
			}

			var year, month, day, hour, minute int
			var second float64
			if _, err := fmt.Sscanf(args[0], "%d-%d-%d", &year, &month, &day); err != nil {
				return fmt.Errorf("parse date %q: %w", args[0], err)
			}
			if len(args) > 1 {
				if _, err := fmt.Sscanf(args[1], "%d:%d:%g", &hour, &minute, &second); err != nil {
					return fmt.Errorf("parse time %q: %w", args[1], err)
				}
			}

			d, warn, err := a.converter.FromCalendar(scale, year, month, day, hour, minute, second)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f %.12f\n", d.Part1, d.Part2)
			printStatus(cmd, warn)
			return nil
		},
	}

	cmd.Flags().StringVar(&scaleName, "scale", "UTC", "time scale of the input")
	return cmd
}
