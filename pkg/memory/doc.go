// Package memory provides a client for the project resource API of a
// knowledge-base server.
//
// Every project is addressed by a base URL derived from its permalink;
// files are written with PUT {project}/resource/{path}.
package memory
