// Command terrace generates boxes and stepped terrain meshes, combines them
// through a boolean kernel, and writes the result as STL, JSON or a summary.
package main

func main() {
	Execute()
}
