package main

import "github.com/CloudCorpRecords/RedTeamGemini/cmd"

func main() {
	cmd.Execute()
}
