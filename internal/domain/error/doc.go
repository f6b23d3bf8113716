// Package error holds the sentinel errors and coded error types of each
// CareSync domain. Codes have the form PREFIX-CCNNNN: CC is the category
// and NNNN the specific failure; clients switch on the code, not the text.
package error
