/*
Command cidrtriectl is a minimal demo harness over the cidrtrie engine: a
flag-based CLI exercising insert, contains, dump, and load, exactly as
spec §6 suggests for any reimplementation of the original CLI/demo ("out
of scope... if reimplemented, use a flag-based interface"). It is not part
of the library's tested surface.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/packetshield/cidrtrie"
)

func main() {
	var (
		storePath = flag.String("store", "", "path to a dump file to load before running, and to write after insert/clear")
		insert    = flag.String("insert", "", "comma-separated CIDR prefixes to insert")
		contains  = flag.String("contains", "", "address to test for membership")
		clear     = flag.Bool("clear", false, "clear the store before any inserts")
		dump      = flag.Bool("dump", false, "print the store's size-on-disk after other operations and exit")
	)
	flag.Parse()

	e, err := loadOrNew(*storePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cidrtriectl:", err)
		os.Exit(1)
	}

	if *clear {
		e.Clear()
	}

	if *insert != "" {
		e.BatchInsert(splitCIDRs(*insert))
	}

	if *contains != "" {
		ok, err := e.Contains(*contains)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cidrtriectl:", err)
			os.Exit(1)
		}
		fmt.Println(ok)
	}

	if *storePath != "" && (*insert != "" || *clear) {
		if err := save(e, *storePath); err != nil {
			fmt.Fprintln(os.Stderr, "cidrtriectl:", err)
			os.Exit(1)
		}
	}

	if *dump {
		data, err := e.Dump()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cidrtriectl:", err)
			os.Exit(1)
		}
		fmt.Println(len(data), "bytes")
	}
}

func loadOrNew(path string) (*cidrtrie.Engine, error) {
	if path == "" {
		return cidrtrie.New(nil), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cidrtrie.New(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return cidrtrie.Load(data, nil)
}

func save(e *cidrtrie.Engine, path string) error {
	data, err := e.Dump()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func splitCIDRs(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
