/*
Package mobynet locates the network namespaces of Docker containers, so that
ipchk can sweep from the network perspective of a particular container.
*/
package mobynet
