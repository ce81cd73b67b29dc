package database

var Setup = setup
