package main

import "blogposts/service"

func main() {
	service.Execute()
}
