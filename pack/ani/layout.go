package ani

// DescribeLayout decodes b and lists every region the decoder visited,
// with unvisited gaps between them. On a decode failure the regions
// visited before the failure are returned together with the error.
func DescribeLayout(b []byte) (string, error) {
	_, bs, err := decode(b, nil)
	return bs.StringTree(), err
}
