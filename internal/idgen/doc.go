// Package idgen centralises unique identifier generation.
package idgen
