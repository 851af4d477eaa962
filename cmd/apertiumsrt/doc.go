// Package main hosts the apertiumsrt CLI entrypoint and command graph.
//
// The root command converts one subtitle file: without a language pair it
// writes the protected intermediate, with a pair it also drives the Apertium
// engine and writes the translated subtitle. Subcommands expose the
// individual steps (deblank, inspect), an engine availability check, and
// configuration scaffolding.
//
// Keep this package lean: conversion logic lives in internal/convert and the
// packages below it; commands here only parse flags and render results.
package main
