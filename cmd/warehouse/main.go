// Command warehouse runs stationery warehouse scenarios from the command line.
package main

import "github.com/mesh-intelligence/warehouse/internal/cli"

func main() {
	cli.Execute()
}
