/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/kaleidalab/qdakit/cmd/qda/cmd"

func main() {
	cmd.Execute()
}
