// Package pastdueentries lists the unreturned rental entries whose due date lies before today,
// together with the late fee each would cost if returned now.
package pastdueentries
