// Command verilens is the command line interface to the Verilens media
// authenticity API. It uploads files or social media links for analysis,
// polls for results, lists past analyses, and maintains an optional local
// result cache and submission history.
package main
