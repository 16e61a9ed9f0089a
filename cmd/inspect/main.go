// Command inspect dumps the badger key space of the message board in a
// readable table: records decoded from JSON, index entries shown raw.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"

	"message-board/domain"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (empty scans everything)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	color.Cyan.Printf("Scanning %s (prefix %q)\n\n", *dbPath, *prefix)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(row(key, v))
				return nil
			})
			if err != nil {
				fmt.Printf("Error reading key %s: %v\n", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning: ", err)
	}

	table.Render()
}

func row(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "account:"):
		var acct domain.Account
		if err := json.Unmarshal(val, &acct); err != nil {
			return []string{key, "ACCOUNT", "?", "unreadable: " + err.Error()}
		}
		return []string{key, "ACCOUNT", fmt.Sprint(acct.ID), "username=" + acct.Username}
	case strings.HasPrefix(key, "message:"):
		var msg domain.Message
		if err := json.Unmarshal(val, &msg); err != nil {
			return []string{key, "MESSAGE", "?", "unreadable: " + err.Error()}
		}
		detail := fmt.Sprintf("posted_by=%d at=%d text=%q", msg.PostedBy, msg.PostedAtEpoch, truncate(msg.Text, 40))
		return []string{key, "MESSAGE", fmt.Sprint(msg.ID), detail}
	case strings.HasPrefix(key, "username:"), strings.HasPrefix(key, "owner:"):
		return []string{key, "INDEX", string(val), ""}
	default:
		return []string{key, "RAW", "-", fmt.Sprintf("%d bytes", len(val))}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
