// Package semantic holds the resolved program produced by analysis: variables,
// constant values, references into variables, and instructions bound to catalog overloads.
package semantic
