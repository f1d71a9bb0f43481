// Package cli provides the interactive travelbook command-line client.
//
// It stands in for a graphical UI: every command goes through the services
// container, never straight to the store or the remote client. On the first
// launch a welcome line is printed. The REPL is started via App.Run, which
// blocks until the user exits or input ends.
//
// Commands
//
//	trips                         list trips
//	addtrip <name>                create a trip
//	renametrip <id> <name>        rename a trip
//	deltrip <id>                  delete a trip with its entries and images
//	entries <trip id>             list a trip's entries
//	addentry <trip id>            create an entry (asks for title, text, location)
//	editentry <id>                edit an unpublished entry
//	delentry <id>                 delete an entry and its images
//	images <entry id>             list an entry's images
//	addimage <entry id> <uri>     attach an image reference
//	delimage <id>                 detach an image
//	publish <entry id>            publish an entry to the remote diary
//	remote                        list remote entries
//	remoteget <remote id>         show one remote entry
//	help, exit | quit
package cli
