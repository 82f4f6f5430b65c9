package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/bindery"
	"github.com/aretw0/bindery/pkg/graph"
	"github.com/spf13/cobra"
)

var (
	linksOrphans   bool
	linksDangling  bool
	linksByTenet   bool
	linksBacklinks bool
)

// linksCmd represents the links command
var linksCmd = &cobra.Command{
	Use:   "links [id]",
	Short: "Inspect the cross-reference graph",
	Long: `Links builds the corpus reference graph from Related Bindings sections
and derived_from front matter. With an ID it prints that document's
outgoing references and backlinks (--backlinks narrows the output to
bare backlink IDs); the other flags query the whole graph.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := bindery.FindCorpusRoot(wd)
		if err != nil {
			root = wd
		}

		repo, err := bindery.Init(root,
			bindery.WithAdapter(adapter),
			bindery.WithVersioning(!gitless),
			bindery.WithMustExist(true),
			bindery.WithReadOnly(true),
			bindery.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open corpus", err)
		}

		g, err := graph.BuildRepository(context.Background(), repo, slog.Default())
		if err != nil {
			fatal("Failed to build reference graph", err)
		}

		switch {
		case linksBacklinks:
			if len(args) != 1 {
				fatal("Missing document ID", fmt.Errorf("--backlinks requires a document ID"))
			}
			id := args[0]
			if !g.Has(id) {
				fatal("Unknown document", fmt.Errorf("%q is not in the corpus", id))
			}
			for _, e := range g.Backlinks(id) {
				fmt.Println(e.From)
			}
		case len(args) == 1:
			printNode(g, args[0])
		case linksOrphans:
			for _, id := range g.Orphans() {
				fmt.Println(id)
			}
		case linksDangling:
			for _, e := range g.Dangling() {
				fmt.Printf("%s -> %s (missing)\n", e.From, e.To)
			}
		case linksByTenet:
			byTenet := g.ByTenet()
			for _, tenet := range sortedKeys(byTenet) {
				fmt.Println(tenet)
				for _, id := range byTenet[tenet] {
					fmt.Printf("  %s\n", id)
				}
			}
		default:
			for _, id := range g.IDs() {
				fmt.Printf("%s (%d out, %d in)\n", id, len(g.References(id)), len(g.Backlinks(id)))
			}
		}
	},
}

func printNode(g *graph.Graph, id string) {
	if !g.Has(id) {
		fatal("Unknown document", fmt.Errorf("%q is not in the corpus", id))
	}

	fmt.Println("References:")
	for _, e := range g.References(id) {
		marker := ""
		if !g.Has(e.To) {
			marker = " (missing)"
		}
		fmt.Printf("  %s [%s]%s\n", e.To, e.Kind, marker)
	}

	fmt.Println("Backlinks:")
	for _, e := range g.Backlinks(id) {
		fmt.Printf("  %s [%s]\n", e.From, e.Kind)
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().BoolVar(&linksOrphans, "orphans", false, "List bindings no other document references")
	linksCmd.Flags().BoolVar(&linksDangling, "dangling", false, "List references whose target is missing")
	linksCmd.Flags().BoolVar(&linksByTenet, "by-tenet", false, "Group bindings by the tenet they derive from")
	linksCmd.Flags().BoolVar(&linksBacklinks, "backlinks", false, "Print only the IDs of documents referencing the given ID")
}
