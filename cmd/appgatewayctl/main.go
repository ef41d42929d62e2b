// cmd/appgatewayctl/main.go
// Entrypoint for the appgatewayctl operator binary. All real work lives in
// root.go and its sibling sub-command files.
package main

func main() {
	Execute()
}
