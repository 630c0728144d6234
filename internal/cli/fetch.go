package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"astrocards/internal/adapters/astroapi"
	"astrocards/internal/presentation"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fetch <location...>",
		Short: "Show today's sun and moon times for a location",
		Long:  "Joins the arguments into one location, queries {endpoint}/astro and prints the cards.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFetch,
	}

	RootCmd.AddCommand(cmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(formatFlag); err != nil {
		return err
	}
	location := strings.Join(args, " ")

	endpoint, err := resolveEndpoint()
	if err != nil {
		return err
	}

	client := astroapi.NewClient(endpoint, http.DefaultClient)
	ctrl := presentation.NewController(client)
	ctrl.OnLocationChanged(location)

	state := ctrl.OnSubmit(cmd.Context())
	if state.Status != "" {
		return errors.New(state.Status)
	}

	views := presentation.BuildViews(*state.Record)
	if strings.EqualFold(formatFlag, "json") {
		return writeJSON(cmd.OutOrStdout(), views)
	}
	return writeText(cmd.OutOrStdout(), views)
}

func writeJSON(w io.Writer, views presentation.Views) error {
	b, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeText(w io.Writer, views presentation.Views) error {
	fmt.Fprintln(w, views.Location)
	fmt.Fprintln(w, views.DateLine)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range views.Events {
		fmt.Fprintf(tw, "%s\t%s\n", e.Label, e.Time)
	}
	fmt.Fprintf(tw, "Moon Phase\t%s\n", views.MoonPhase.Phase)
	fmt.Fprintf(tw, "Illumination\t%s\n", views.Illumination.Text)
	return tw.Flush()
}
