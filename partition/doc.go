// Package partition decides which simulated node receives each record of a labeled dataset.
//
// A leading fraction of the records (by position) is dealt round-robin across nodes, producing
// an IID split. The remaining records are routed to a contiguous range of nodes determined by
// their label, producing a label-skewed (non-IID) split. Varying the uniform fraction between
// 0 and 1 moves smoothly between the two.
package partition
