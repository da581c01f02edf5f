// schedtrace inspects the SQLite fire traces written by the datarecording
// package.
package main

func main() {
	Execute()
}
