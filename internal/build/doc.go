// Package build provides the build pipeline of the portfolio site.
//
// A build ingests the content directory, assembles the routes, writes every
// page to the output directory and finally synchronizes the remote scripts.
// Content and output failures abort the build. Script failures are isolated
// per entry and reported in the result without failing the build.
//
// All execution paths (CLI build, watch mode, tests) route through BuildService.
package build
