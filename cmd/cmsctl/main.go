// Command cmsctl runs schema migrations and seeds demo data.
package main

func main() {
	Execute()
}
