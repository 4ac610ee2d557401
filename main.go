package main

import "github.com/crmdesk/customer-registry/cmd"

func main() {
	cmd.Execute()
}
