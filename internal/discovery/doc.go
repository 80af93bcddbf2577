// Package discovery finds dive computer bridges on the local network.
//
// Uwatec Smart family dive computers talk IrDA, so they reach the network
// through a serial bridge. Bridges advertise themselves over mDNS/DNS-SD
// and publish the name of the dive computer currently in IrDA range in
// their TXT records. Scanning therefore answers two questions at once:
// where is the bridge, and is there a recognized dive computer behind it.
//
// Recognition uses the same name filter the IrDA discovery used on the
// wire: anything identifying itself as Uwatec, Aladin, Smart or Galileo is
// accepted.
package discovery
