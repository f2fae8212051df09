package rpc

// RequestInterceptor may rewrite an outgoing request (headers, body)
// before dispatch. Interceptors run in registration order and should be
// side-effect free.
type RequestInterceptor func(req *Request) error

// ResponseInterceptor may transform the response of a successful call
// before it is returned to the caller. Interceptors run in registration
// order.
type ResponseInterceptor func(resp *Response) error

// UseRequest registers a request interceptor. Not safe to call
// concurrently with Call; register interceptors during wiring.
func (c *Client) UseRequest(interceptor RequestInterceptor) {
	c.reqInterceptors = append(c.reqInterceptors, interceptor)
}

// UseResponse registers a response interceptor.
func (c *Client) UseResponse(interceptor ResponseInterceptor) {
	c.respInterceptors = append(c.respInterceptors, interceptor)
}

// applyRequestInterceptors runs the request pipeline in order
func (c *Client) applyRequestInterceptors(req *Request) error {
	for _, interceptor := range c.reqInterceptors {
		if err := interceptor(req); err != nil {
			return &Error{Class: ClassUnknown, Err: err}
		}
	}
	return nil
}

// applyResponseInterceptors runs the response pipeline in order
func (c *Client) applyResponseInterceptors(resp *Response) error {
	for _, interceptor := range c.respInterceptors {
		if err := interceptor(resp); err != nil {
			return &Error{Class: ClassUnknown, Err: err}
		}
	}
	return nil
}
