// Package kshell holds the building blocks of the kernel shell: decoding a raw
// terminal line, splitting it into a Command and buffering the bounded
// response that gets copied back to the terminal driver.
package kshell
