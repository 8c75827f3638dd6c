// Command plfetch saves Premier League standings and fixtures as JSON.
package main

import "github.com/princespaghetti/plfetch/internal/cli"

func main() {
	cli.Execute()
}
