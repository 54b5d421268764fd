package main

import (
	"fmt"
	"os"

	"github.com/crucial707/blogapi/cmd/cli/auth"
	"github.com/crucial707/blogapi/cmd/cli/blogs"
	"github.com/crucial707/blogapi/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	blogs.InitBlogs(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
