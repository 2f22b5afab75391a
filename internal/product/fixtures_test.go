package product

const productPage = `<!DOCTYPE html>
<html><head><title>Widget</title></head>
<body>
<div id="wayfinding-breadcrumbs_container">
  <ul>
    <li><span><a href="/electronics">Electronics</a></span></li>
    <li class="a-breadcrumb-divider"><span>›</span></li>
    <li><span><a href="/computers">Computers &amp; Accessories</a></span></li>
  </ul>
</div>
<span id="productTitle">
   Acme Widget Pro
</span>
<img id="landingImage" src="https://img.example.com/main.jpg">
<ul class="thumbs">
  <li><img class="a-thumbnail-image" src="https://img.example.com/t1.jpg"></li>
  <li><img class="a-thumbnail-image" src="https://img.example.com/t2.jpg"></li>
  <li><img class="a-thumbnail-image"></li>
  <li><img class="a-thumbnail-image other" src="https://img.example.com/t3.jpg"></li>
</ul>
<div class="price">
  <span class="a-price"><span class="a-price-whole">24.</span><span class="a-price-fraction">99</span></span>
  <span class="a-price a-text-price a-size-base"><span class="a-offscreen">$34.99</span></span>
</div>
<div id="productDescription">
  <p>  The best widget.  </p>
</div>
<table id="productDetails">
  <tr><th> Manufacturer </th><td>Acme</td></tr>
  <tr><th>
    ASIN
  </th><td> B07X6C9RMF </td></tr>
</table>
</body></html>`

const noDiscountPage = `<html><body>
<span class="a-price-whole">19.</span>
</body></html>`

const emptyPage = `<html><body><p>Robot check</p></body></html>`
