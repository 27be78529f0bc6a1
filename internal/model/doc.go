// Package model defines the data types shared across devkit: tool
// categories and the Result value every tool produces.
package model
