// Package netlist provides the logic netlist consumed by the global placer.
//
// # Overview
//
// A netlist is a set of placeable cells connected by nets. Each net is a
// hyperedge with at most one driver terminal and any number of user
// terminals; every terminal is a (cell, port) pair.
//
// Cells and nets are stored in dense tables and referenced by small integer
// handles ([CellID], [NetID]). Consumers such as the bin placer keep handles,
// never pointers, so the netlist stays the single owner of its data.
//
// # Building
//
//	nl := netlist.New()
//	lut, _ := nl.AddCell(netlist.Cell{Name: "lut0", Type: "LUT4"})
//	ff, _ := nl.AddCell(netlist.Cell{Name: "ff0", Type: "DFF"})
//	_, _ = nl.AddNet("q", netlist.PortRef{Cell: lut, Port: "O"},
//	    netlist.PortRef{Cell: ff, Port: "D"})
//
// # Fixed locations
//
// A cell carrying the [AttrBEL] attribute is pinned by the user to the named
// physical site. [Cell.FixedSite] reports the attribute value.
//
// # JSON Format
//
//	{
//	  "cells": [
//	    {"name": "lut0", "type": "LUT4", "attrs": {"BEL": "X0Y0/LUT0"}},
//	    {"name": "ff0", "type": "DFF"}
//	  ],
//	  "nets": [
//	    {"name": "q", "driver": {"cell": "lut0", "port": "O"},
//	     "users": [{"cell": "ff0", "port": "D"}]}
//	  ]
//	}
//
// Use [ReadFile] / [Read] to import and [WriteFile] / [Write] to export.
// Cell references are resolved by name on import.
//
// # Concurrency
//
// A Netlist is not safe for concurrent modification. Concurrent readers are
// fine once construction is complete.
package netlist
