package main

import "github.com/pcannon/fishlog-cli/cmd/fishlog"

func main() {
	fishlog.Execute()
}
