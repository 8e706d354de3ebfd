// Package main реализует точку входа сервиса заметок.
package main

func main() {
	Execute()
}
